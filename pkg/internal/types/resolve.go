package types

// ResolveResponse 名称解析结果，字段顺序与查看器消费方式一致.
type ResolveResponse struct {
	ModelPath   string `json:"modelPath"` // 活动区可服务路径
	ClientName  string `json:"clientName"`
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
}
