package registry_test

import (
	"errors"
	"testing"

	"github.com/modelvault/modelvault/pkg/internal/registry"
)

// fakeRelocator 记录搬迁调用，便于断言删除路径的行为.
type fakeRelocator struct {
	moved   []string
	missing map[string]bool
	err     error
}

func (f *fakeRelocator) RelocateToBackup(name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	if f.missing[name] {
		return false, nil
	}

	f.moved = append(f.moved, name)

	return true, nil
}

// TestSlugify 测试标识派生规则.
func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Co":        "acme-co",
		"  Acme   Co  ":  "acme-co",
		"ACME & Co. Ltd": "acme-co-ltd",
		"already-slug":   "already-slug",
		"Üñï":            "",
	}

	for in, want := range cases {
		if got := registry.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestHumanize 测试标识的人性化还原.
func TestHumanize(t *testing.T) {
	if got := registry.Humanize("acme-co"); got != "Acme Co" {
		t.Errorf("Humanize(acme-co) = %q, want %q", got, "Acme Co")
	}
}

// TestCreateClientDuplicate 同一派生标识不允许重复创建.
func TestCreateClientDuplicate(t *testing.T) {
	r := registry.New(&fakeRelocator{})

	id, err := r.CreateClient("Acme Co", "a@acme.io")
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	if id != "acme-co" {
		t.Errorf("derived id = %q, want acme-co", id)
	}

	// 不同大小写派生出同一标识，视为重复
	if _, err := r.CreateClient("ACME CO", ""); !errors.Is(err, registry.ErrDuplicateClient) {
		t.Errorf("expected ErrDuplicateClient, got %v", err)
	}
}

// TestLinkProjectAutoCreates 挂接未知客户时自动创建，展示名为人性化标识.
func TestLinkProjectAutoCreates(t *testing.T) {
	r := registry.New(&fakeRelocator{})

	created, err := r.LinkProject("acme-co", "p1", "1_model.glb", "")
	if err != nil {
		t.Fatalf("LinkProject failed: %v", err)
	}

	if !created {
		t.Error("expected auto-creation to be reported")
	}

	c, err := r.FindClientByName("Acme Co")
	if err != nil {
		t.Fatalf("auto-created client not found: %v", err)
	}

	if len(c.Projects) != 1 {
		t.Errorf("project count = %d, want 1", len(c.Projects))
	}

	// 已存在客户的再次挂接不报告建档
	if created, err = r.LinkProject("acme-co", "p2", "3_model.glb", ""); err != nil || created {
		t.Errorf("second link: created = %v, err = %v", created, err)
	}

	// 第二个客户的挂接不影响第一个
	if _, err := r.LinkProject("beta-gmbh", "p1", "2_model.glb", ""); err != nil {
		t.Fatalf("LinkProject failed: %v", err)
	}

	c, _ = r.FindClientByName("Acme Co")
	if len(c.Projects) != 2 {
		t.Errorf("unrelated link changed project count to %d", len(c.Projects))
	}
}

// TestLinkProjectRequiresIDs 缺失任一标识时拒绝.
func TestLinkProjectRequiresIDs(t *testing.T) {
	r := registry.New(&fakeRelocator{})

	if _, err := r.LinkProject("", "p1", "f.glb", ""); !errors.Is(err, registry.ErrMissingIDs) {
		t.Errorf("expected ErrMissingIDs, got %v", err)
	}

	if _, err := r.LinkProject("acme", "", "f.glb", ""); !errors.Is(err, registry.ErrMissingIDs) {
		t.Errorf("expected ErrMissingIDs, got %v", err)
	}
}

// TestLinkProjectOverwrites 同编号项目覆盖写入（last-write-wins）.
func TestLinkProjectOverwrites(t *testing.T) {
	r := registry.New(&fakeRelocator{})

	_, _ = r.LinkProject("acme-co", "p1", "1_old.glb", "")
	_, _ = r.LinkProject("acme-co", "p1", "2_new.glb", "revised")

	p, err := r.GetProject("acme-co", "p1")
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}

	if p.Filename != "2_new.glb" || p.Description != "revised" {
		t.Errorf("project not overwritten: %+v", p)
	}
}

// TestDeleteProject 删除项目搬迁文件、项目数恰好减一，不波及其它项目.
func TestDeleteProject(t *testing.T) {
	fr := &fakeRelocator{}
	r := registry.New(fr)

	_, _ = r.LinkProject("acme-co", "p1", "1_a.glb", "")
	_, _ = r.LinkProject("acme-co", "p2", "2_b.glb", "")

	removed, remaining, err := r.DeleteProject("acme-co", "p1")
	if err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if removed.Project.Filename != "1_a.glb" {
		t.Errorf("removed filename = %q, want 1_a.glb", removed.Project.Filename)
	}

	if !removed.Relocated {
		t.Error("expected relocation to be reported")
	}

	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}

	if len(fr.moved) != 1 || fr.moved[0] != "1_a.glb" {
		t.Errorf("relocated files = %v, want [1_a.glb]", fr.moved)
	}

	if _, err := r.GetProject("acme-co", "p2"); err != nil {
		t.Errorf("unrelated project was removed: %v", err)
	}

	if _, _, err := r.DeleteProject("acme-co", "p1"); !errors.Is(err, registry.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}

	if _, _, err := r.DeleteProject("nobody", "p1"); !errors.Is(err, registry.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}

// TestDeleteProjectMissingFile 文件已缺失时逻辑删除照常进行.
func TestDeleteProjectMissingFile(t *testing.T) {
	fr := &fakeRelocator{missing: map[string]bool{"1_a.glb": true}}
	r := registry.New(fr)

	_, _ = r.LinkProject("acme-co", "p1", "1_a.glb", "")

	removed, remaining, err := r.DeleteProject("acme-co", "p1")
	if err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if removed.Relocated {
		t.Error("missing file reported as relocated")
	}

	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
}

// TestDeleteClientCascades 级联删除移除全部项目与客户本身.
func TestDeleteClientCascades(t *testing.T) {
	fr := &fakeRelocator{}
	r := registry.New(fr)

	_, _ = r.CreateClient("Acme Co", "")
	_, _ = r.LinkProject("acme-co", "p1", "1_a.glb", "")
	_, _ = r.LinkProject("acme-co", "p2", "2_b.glb", "")

	removed, err := r.DeleteClient("acme-co")
	if err != nil {
		t.Fatalf("DeleteClient failed: %v", err)
	}

	if len(removed) != 2 {
		t.Errorf("removed = %d, want 2", len(removed))
	}

	for _, rp := range removed {
		if !rp.Relocated {
			t.Errorf("project %s not reported as relocated", rp.ProjectID)
		}
	}

	if len(fr.moved) != 2 {
		t.Errorf("relocated %d files, want 2", len(fr.moved))
	}

	if _, err := r.FindClientByName("Acme Co"); !errors.Is(err, registry.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound after cascade, got %v", err)
	}

	if _, err := r.DeleteClient("acme-co"); !errors.Is(err, registry.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}

// TestFindClientByName 大小写不敏感，未命中返回错误而非 panic.
func TestFindClientByName(t *testing.T) {
	r := registry.New(&fakeRelocator{})

	_, _ = r.CreateClient("Acme Co", "")

	for _, name := range []string{"acme co", "ACME CO", "Acme Co"} {
		if _, err := r.FindClientByName(name); err != nil {
			t.Errorf("FindClientByName(%q) failed: %v", name, err)
		}
	}

	if _, err := r.FindClientByName("nobody"); !errors.Is(err, registry.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}

// TestListClients 快照按标识排序并带项目数.
func TestListClients(t *testing.T) {
	r := registry.New(&fakeRelocator{})

	_, _ = r.LinkProject("zeta", "p1", "1_z.glb", "")
	_, _ = r.LinkProject("acme-co", "p1", "2_a.glb", "")

	clients := r.ListClients()
	if len(clients) != 2 {
		t.Fatalf("len = %d, want 2", len(clients))
	}

	if clients[0].ID != "acme-co" || clients[1].ID != "zeta" {
		t.Errorf("snapshot not sorted by id: %v, %v", clients[0].ID, clients[1].ID)
	}

	// 快照是深拷贝，修改不影响注册表
	clients[0].Projects["p9"] = clients[0].Projects["p1"]

	c, _ := r.FindClientByName("Acme Co")
	if len(c.Projects) != 1 {
		t.Errorf("snapshot mutation leaked into registry")
	}
}
