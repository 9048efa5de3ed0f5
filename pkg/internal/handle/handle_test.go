package handle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/router"
	"github.com/modelvault/modelvault/pkg/internal/storage"
	"github.com/modelvault/modelvault/pkg/internal/storage/filestore"
	"github.com/modelvault/modelvault/pkg/internal/storage/mq"
	"github.com/modelvault/modelvault/pkg/middleware"
	"github.com/modelvault/modelvault/pkg/queue"
)

type testEnv struct {
	engine    *gin.Engine
	activeDir string
	backupDir string
	mq        *mq.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	root := t.TempDir()
	active := filepath.Join(root, "models")
	backup := filepath.Join(root, "models_backup")

	store, err := filestore.New(context.Background(), &configs.StorageConfig{
		Backend:   string(configs.StorageBackendLocal),
		ActiveDir: active,
		BackupDir: backup,
	})
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}

	mqClient, err := mq.New(context.Background())
	if err != nil {
		t.Fatalf("mq.New: %v", err)
	}

	mgr := &storage.Manager{
		FileStore: store,
		Registry:  registry.New(store),
		MQ:        mqClient,
	}

	engine := gin.New()
	engine.Use(middleware.StorageMiddleware(mgr))

	v1 := engine.Group("/api/v1")
	router.RegisterModelRoutes(v1)
	router.RegisterClientRoutes(v1)
	router.RegisterResolveRoutes(v1)
	router.RegisterHealthCheckRoute(v1)

	return &testEnv{engine: engine, activeDir: active, backupDir: backup, mq: mqClient}
}

func (e *testEnv) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	return w
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	return e.do(t, http.MethodPost, path, bytes.NewBuffer(b), "application/json")
}

// uploadForm 构造 multipart 上传请求，declaredType 为文件 part 的 Content-Type.
func (e *testEnv) uploadForm(t *testing.T, filename, declaredType, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", declaredType)

	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}

	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}

	_ = mw.Close()

	return e.do(t, http.MethodPost, "/api/v1/models", &buf, mw.FormDataContentType())
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// TestUploadDeleteResolveFlow 覆盖完整生命周期：建档、上传、列表、解析、
// 删除后文件退役且解析失效.
func TestUploadDeleteResolveFlow(t *testing.T) {
	env := newTestEnv(t)

	// 建档
	w := env.postJSON(t, "/api/v1/clients", map[string]string{"name": "Acme Co"})
	if w.Code != http.StatusOK {
		t.Fatalf("create client: status %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		ClientID string `json:"clientId"`
	}

	decode(t, w, &created)

	if created.ClientID != "acme-co" {
		t.Fatalf("clientId = %q, want acme-co", created.ClientID)
	}

	// 上传
	w = env.uploadForm(t, "chair.glb", "model/gltf-binary", "glb-bytes", map[string]string{
		"client_id":  "acme-co",
		"project_id": "p1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d, body %s", w.Code, w.Body.String())
	}

	var uploaded struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}

	decode(t, w, &uploaded)

	if !strings.HasSuffix(uploaded.Filename, "_chair.glb") {
		t.Errorf("filename = %q, want *_chair.glb", uploaded.Filename)
	}

	if _, err := os.Stat(filepath.Join(env.activeDir, uploaded.Filename)); err != nil {
		t.Fatalf("uploaded file not in active area: %v", err)
	}

	// 列表
	w = env.do(t, http.MethodGet, "/api/v1/clients", nil, "")

	var listed struct {
		Clients []struct {
			ID           string `json:"id"`
			ProjectCount int    `json:"projectCount"`
		} `json:"clients"`
	}

	decode(t, w, &listed)

	if len(listed.Clients) != 1 || listed.Clients[0].ID != "acme-co" || listed.Clients[0].ProjectCount != 1 {
		t.Fatalf("unexpected client list: %+v", listed)
	}

	// 解析：展示名大小写不敏感
	w = env.do(t, http.MethodGet, "/api/v1/resolve/"+url.PathEscape("acme co")+"/p1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: status %d, body %s", w.Code, w.Body.String())
	}

	var resolved struct {
		ModelPath  string `json:"modelPath"`
		ClientName string `json:"clientName"`
	}

	decode(t, w, &resolved)

	if resolved.ClientName != "Acme Co" || !strings.HasSuffix(resolved.ModelPath, uploaded.Filename) {
		t.Fatalf("unexpected resolve response: %+v", resolved)
	}

	// 删除项目
	w = env.do(t, http.MethodDelete, "/api/v1/clients/acme-co/projects/p1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete project: status %d, body %s", w.Code, w.Body.String())
	}

	var deleted struct {
		RemainingProjects int `json:"remainingProjects"`
	}

	decode(t, w, &deleted)

	if deleted.RemainingProjects != 0 {
		t.Errorf("remainingProjects = %d, want 0", deleted.RemainingProjects)
	}

	// 文件退役到备份区
	if _, err := os.Stat(filepath.Join(env.activeDir, uploaded.Filename)); err == nil {
		t.Error("file still in active area after delete")
	}

	if _, err := os.Stat(filepath.Join(env.backupDir, uploaded.Filename)); err != nil {
		t.Errorf("file not in backup area after delete: %v", err)
	}

	// 解析失效
	w = env.do(t, http.MethodGet, "/api/v1/resolve/"+url.PathEscape("acme co")+"/p1", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("resolve after delete: status %d, want 404", w.Code)
	}
}

// TestUploadRejectsWrongType 校验失败发生在任何文件写入之前.
func TestUploadRejectsWrongType(t *testing.T) {
	env := newTestEnv(t)

	w := env.uploadForm(t, "model.txt", "text/plain", "not a model", map[string]string{
		"client_id":  "acme-co",
		"project_id": "p1",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Only .glb files are allowed") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	entries, err := os.ReadDir(env.activeDir)
	if err != nil {
		t.Fatalf("read active dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("rejected upload left files in active area: %v", entries)
	}
}

func TestUploadRequiresIDs(t *testing.T) {
	env := newTestEnv(t)

	w := env.uploadForm(t, "chair.glb", "model/gltf-binary", "x", map[string]string{
		"client_id": "acme-co",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Client ID and Project ID are required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateClientDuplicate(t *testing.T) {
	env := newTestEnv(t)

	if w := env.postJSON(t, "/api/v1/clients", map[string]string{"name": "Acme Co"}); w.Code != http.StatusOK {
		t.Fatalf("first create: status %d", w.Code)
	}

	w := env.postJSON(t, "/api/v1/clients", map[string]string{"name": "acme   co"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: status %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Client already exists") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/v1/clients/nobody", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete client: status %d, want 404", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Client not found") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	w = env.do(t, http.MethodDelete, "/api/v1/clients/nobody/projects/p1", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete project: status %d, want 404", w.Code)
	}
}

// countingReader 统计下游实际读取的字节数.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)

	return n, err
}

// TestUploadOversizeCutsBodyEarly 超限请求体必须在完整缓冲前被拒绝：
// 声明了长度的请求不读任何字节，流式请求在上限附近截断.
func TestUploadOversizeCutsBodyEarly(t *testing.T) {
	env := newTestEnv(t)
	configs.GetConfig().Storage.MaxUploadSizeMB = 1

	buildBody := func() (*bytes.Buffer, string) {
		var buf bytes.Buffer

		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("client_id", "acme-co")
		_ = mw.WriteField("project_id", "p1")

		part, _ := mw.CreateFormFile("file", "big.glb")
		_, _ = part.Write(bytes.Repeat([]byte("x"), 4<<20))
		_ = mw.Close()

		return &buf, mw.FormDataContentType()
	}

	// 流式请求：长度未知，截断发生在读取过程中
	body, contentType := buildBody()
	total := int64(body.Len())

	cr := &countingReader{r: body}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/models", cr)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("streamed oversize: status = %d, want 413 (body %s)", w.Code, w.Body.String())
	}

	if cr.n >= total {
		t.Errorf("entire body was buffered: read %d of %d bytes", cr.n, total)
	}

	// 声明了长度的请求：一个字节都不读
	body, contentType = buildBody()
	cr = &countingReader{r: body}
	req = httptest.NewRequest(http.MethodPost, "/api/v1/models", cr)
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("declared oversize: status = %d, want 413", w.Code)
	}

	if cr.n != 0 {
		t.Errorf("declared oversize still read %d bytes", cr.n)
	}
}

// TestDeleteClientAcceptsLiteralUploadID 上传时的字面客户标识在删除路径同样可用：
// 两边都做同一套规范化.
func TestDeleteClientAcceptsLiteralUploadID(t *testing.T) {
	env := newTestEnv(t)

	w := env.uploadForm(t, "chair.glb", "model/gltf-binary", "glb-bytes", map[string]string{
		"client_id":  "Acme Co",
		"project_id": "p1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodDelete, "/api/v1/clients/"+url.PathEscape("Acme Co"), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete with literal id: status %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/v1/clients", nil, "")

	var listed struct {
		Clients []struct {
			ID string `json:"id"`
		} `json:"clients"`
	}

	decode(t, w, &listed)

	if len(listed.Clients) != 0 {
		t.Errorf("client still listed after delete: %+v", listed)
	}
}

func waitEvent(t *testing.T, ch <-chan *message.Message, topic string) *message.Message {
	t.Helper()

	select {
	case msg := <-ch:
		msg.Ack()

		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no event received on %s", topic)

		return nil
	}
}

// TestLifecycleEventsPublished 上传自动建档与删除项目在事件总线上留下完整轨迹.
func TestLifecycleEventsPublished(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createdCh, err := env.mq.Subscribe(ctx, queue.TopicClientCreated)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	linkedCh, err := env.mq.Subscribe(ctx, queue.TopicProjectLinked)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	storedCh, err := env.mq.Subscribe(ctx, queue.TopicModelStored)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	retiredCh, err := env.mq.Subscribe(ctx, queue.TopicModelRetired)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	w := env.uploadForm(t, "chair.glb", "model/gltf-binary", "glb-bytes", map[string]string{
		"client_id":  "acme-co",
		"project_id": "p1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload: status %d, body %s", w.Code, w.Body.String())
	}

	created := waitEvent(t, createdCh, queue.TopicClientCreated)

	createdEvt, err := queue.ParseWatermillMessage[queue.ClientCreatedPayload](created)
	if err != nil {
		t.Fatalf("parse client.created: %v", err)
	}

	if createdEvt.Payload.ClientID != "acme-co" || !createdEvt.Payload.AutoCreated {
		t.Errorf("unexpected client.created payload: %+v", createdEvt.Payload)
	}

	waitEvent(t, linkedCh, queue.TopicProjectLinked)

	stored := waitEvent(t, storedCh, queue.TopicModelStored)

	storedEvt, err := queue.ParseModelStored(stored)
	if err != nil {
		t.Fatalf("parse model.stored: %v", err)
	}

	if !strings.HasSuffix(storedEvt.Payload.Model.StoredName, "_chair.glb") {
		t.Errorf("unexpected model.stored payload: %+v", storedEvt.Payload)
	}

	w = env.do(t, http.MethodDelete, "/api/v1/clients/acme-co/projects/p1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete project: status %d, body %s", w.Code, w.Body.String())
	}

	retired := waitEvent(t, retiredCh, queue.TopicModelRetired)

	retiredEvt, err := queue.ParseModelRetired(retired)
	if err != nil {
		t.Fatalf("parse model.retired: %v", err)
	}

	if retiredEvt.Payload.Model.ClientID != "acme-co" || retiredEvt.Payload.BackupPath == "" {
		t.Errorf("unexpected model.retired payload: %+v", retiredEvt.Payload)
	}
}

// TestSchedulerRoutesWithoutScheduler 调度器初始化失败时任务接口返回 503 而非 panic.
func TestSchedulerRoutesWithoutScheduler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	router.RegisterSchedulerRoutes(v1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scheduler/jobs", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (body %s)", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: status %d, body %s", w.Code, w.Body.String())
	}
}
