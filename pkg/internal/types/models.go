package types

// UploadModelForm 上传表单的非文件字段.
type UploadModelForm struct {
	ClientID    string `form:"client_id"   json:"client_id"`
	ProjectID   string `form:"project_id"  json:"project_id"`
	Description string `form:"description" json:"description,omitempty"` // 可选：项目描述
}

// UploadModelResponse 上传成功响应.
type UploadModelResponse struct {
	Filename  string `json:"filename"` // 入库后的存储名
	URL       string `json:"url"`      // 活动区可服务路径
	ClientID  string `json:"clientId"`
	ProjectID string `json:"projectId"`
}
