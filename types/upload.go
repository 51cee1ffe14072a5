package types

type UploadImageResp struct {
	ImageID   int64  `json:"image_id"`
	Url       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	IsPrimary bool   `json:"is_primary"`
}
