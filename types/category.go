package types

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	ParentID    *int64 `json:"parent_id"`
	Description string `json:"description" binding:"max=500"`
}
