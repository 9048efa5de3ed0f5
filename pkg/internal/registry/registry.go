// Package registry 维护客户与项目的内存索引，是整个服务的事实来源.
//
// 注册表不做持久化：进程重启后索引丢失，磁盘上的文件保留为孤儿，
// 由定时任务（pkg/internal/jobs）巡检并记录. 所有变更操作在同一把锁下
// 执行，级联删除的遍历不会与其它变更交错.
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/modelvault/modelvault/pkg/internal/model"
	nlog "github.com/modelvault/modelvault/pkg/log"
	"github.com/modelvault/modelvault/pkg/metrics"
)

// Relocator 是注册表在删除路径上需要的文件仓库能力子集.
// 搬迁失败不阻止逻辑删除（尽力而为策略），只记录日志.
type Relocator interface {
	RelocateToBackup(name string) (bool, error)
}

// Registry 客户→项目映射及其变更协议.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*model.Client
	store   Relocator
	now     func() time.Time
}

// New 创建空注册表. store 在删除路径上用于把文件搬到备份区.
func New(store Relocator) *Registry {
	return &Registry{
		clients: make(map[string]*model.Client),
		store:   store,
		now:     time.Now,
	}
}

// Slugify 由人类可读名称派生稳定标识：小写，非字母数字的连续片段折叠为单个连字符.
func Slugify(name string) string {
	var b strings.Builder

	lastHyphen := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')

				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// Humanize 把标识还原为展示名：连字符换空格，每个词首字母大写.
func Humanize(id string) string {
	words := strings.Split(id, "-")
	for i, w := range words {
		if w == "" {
			continue
		}

		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}

// CreateClient 显式创建客户，标识由名称派生. 已存在同标识时返回 ErrDuplicateClient.
func (r *Registry) CreateClient(name, contact string) (string, error) {
	id := Slugify(name)
	if id == "" {
		return "", ErrMissingIDs
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[id]; exists {
		return "", ErrDuplicateClient
	}

	r.clients[id] = &model.Client{
		ID:       id,
		Name:     name,
		Contact:  contact,
		Projects: make(map[string]model.Project),
	}

	nlog.Logger().Info().Str("client", id).Msg("client created")

	return id, nil
}

// EnsureClient 幂等地保证客户存在：缺失时自动创建，展示名为标识的人性化形式.
// 只应由 LinkProject 的挂接路径调用，显式创建走 CreateClient.
func (r *Registry) EnsureClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = r.ensureClientLocked(clientID)
}

func (r *Registry) ensureClientLocked(clientID string) (*model.Client, bool) {
	if c, ok := r.clients[clientID]; ok {
		return c, false
	}

	c := &model.Client{
		ID:       clientID,
		Name:     Humanize(clientID),
		Contact:  "",
		Projects: make(map[string]model.Project),
	}
	r.clients[clientID] = c

	nlog.Logger().Info().Str("client", clientID).Msg("client auto-created on link")

	return c, true
}

// LinkProject 把已入库的文件挂接到 (clientID, projectID). 客户缺失时自动创建，
// 返回值指示是否发生了自动建档. 同编号项目被覆盖（last-write-wins）.
// 入库日期取当前日历日期.
func (r *Registry) LinkProject(clientID, projectID, filename, description string) (bool, error) {
	if clientID == "" || projectID == "" {
		return false, ErrMissingIDs
	}

	if description == "" {
		description = "3D model"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, created := r.ensureClientLocked(clientID)
	c.Projects[projectID] = model.Project{
		Filename:     filename,
		Description:  description,
		UploadedDate: r.now().Format("2006-01-02"),
	}

	return created, nil
}

// ListClients 返回按标识排序的客户快照（深拷贝）.
func (r *Registry) ListClients() []model.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c.Clone())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// RemovedProject 描述删除操作移除的一个项目及其文件搬迁结果.
// Relocated 为 false 表示文件在活动区缺失或搬迁失败，只动了账本.
type RemovedProject struct {
	ProjectID string
	Project   model.Project
	Relocated bool
}

// DeleteProject 软删除一个项目：先尽力把文件搬到备份区，再移除注册表条目.
// 返回被移除的项目记录与该客户剩余项目数. 两步不具原子性，搬迁失败只记日志.
func (r *Registry) DeleteProject(clientID, projectID string) (RemovedProject, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[clientID]
	if !ok {
		return RemovedProject{}, 0, ErrClientNotFound
	}

	p, ok := c.Projects[projectID]
	if !ok {
		return RemovedProject{}, 0, ErrProjectNotFound
	}

	relocated := r.relocateLocked(clientID, projectID, p.Filename)
	delete(c.Projects, projectID)

	return RemovedProject{ProjectID: projectID, Project: p, Relocated: relocated}, len(c.Projects), nil
}

// DeleteClient 级联删除客户：逐个项目搬迁文件（各自尽力而为），然后整体移除.
// 返回全部被移除的项目及各自的搬迁结果.
func (r *Registry) DeleteClient(clientID string) ([]RemovedProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}

	removed := make([]RemovedProject, 0, len(c.Projects))

	for pid, p := range c.Projects {
		relocated := r.relocateLocked(clientID, pid, p.Filename)
		removed = append(removed, RemovedProject{ProjectID: pid, Project: p, Relocated: relocated})
	}

	delete(r.clients, clientID)

	nlog.Logger().Info().Str("client", clientID).Int("projects", len(removed)).Msg("client removed")

	return removed, nil
}

// relocateLocked 把文件搬到备份区，返回文件是否确实被搬入.
// 文件已缺失或搬迁失败均不致命.
func (r *Registry) relocateLocked(clientID, projectID, filename string) bool {
	moved, err := r.store.RelocateToBackup(filename)

	l := nlog.Logger().With().
		Str("client", clientID).
		Str("project", projectID).
		Str("filename", filename).
		Logger()

	switch {
	case err != nil:
		metrics.RelocationsTotal.WithLabelValues("failed").Inc()
		l.Error().Err(err).Msg("relocate to backup failed, registry entry removed anyway")
	case !moved:
		metrics.RelocationsTotal.WithLabelValues("missing").Inc()
		l.Warn().Msg("file already missing from active area")
	default:
		metrics.RelocationsTotal.WithLabelValues("moved").Inc()
		l.Info().Msg("file relocated to backup area")
	}

	return err == nil && moved
}

// FindClientByName 按展示名做大小写不敏感的精确匹配.
// 多个客户同名时命中标识序最小者（确定性优先于报错，见 DESIGN.md）.
func (r *Registry) FindClientByName(name string) (model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	for _, id := range ids {
		if strings.EqualFold(r.clients[id].Name, name) {
			return r.clients[id].Clone(), nil
		}
	}

	return model.Client{}, ErrClientNotFound
}

// GetProject 按 (clientID, projectID) 取项目记录.
func (r *Registry) GetProject(clientID, projectID string) (model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[clientID]
	if !ok {
		return model.Project{}, ErrClientNotFound
	}

	p, ok := c.Projects[projectID]
	if !ok {
		return model.Project{}, ErrProjectNotFound
	}

	return p, nil
}

// ActiveFilenames 返回当前被任一项目引用的文件名集合，供孤儿巡检使用.
func (r *Registry) ActiveFilenames() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]struct{})

	for _, c := range r.clients {
		for _, p := range c.Projects {
			out[p.Filename] = struct{}{}
		}
	}

	return out
}
