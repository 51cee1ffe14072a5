package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// Init 多实例部署时每个实例使用不同的节点号 (0-1023)
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// GenID 商品图片 ID, 同时用作 OSS object key
func GenID() int64 {
	return node.Generate().Int64()
}
