// Package model 定义核心领域模型.
package model

// Project 客户名下的一个项目，引用活动区中的一个模型文件.
// Filename 是文件仓库命名空间里的非占有引用，文件本身由 filestore 管理.
type Project struct {
	Filename     string `json:"filename"`
	Description  string `json:"description"`
	UploadedDate string `json:"uploadedDate"` // 入库日期，格式 2006-01-02
}

// Client 客户记录，持有按项目编号索引的项目集合.
type Client struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Contact  string             `json:"contact"`
	Projects map[string]Project `json:"projects"`
}

// Clone 返回客户记录的深拷贝，避免调用方持有注册表内部状态.
func (c *Client) Clone() Client {
	cp := Client{
		ID:       c.ID,
		Name:     c.Name,
		Contact:  c.Contact,
		Projects: make(map[string]Project, len(c.Projects)),
	}
	for k, v := range c.Projects {
		cp.Projects[k] = v
	}

	return cp
}
