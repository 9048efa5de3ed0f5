package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/modelvault/modelvault/pkg/internal/service"
)

func TestValidateModelUpload(t *testing.T) {
	const maxBytes = 10 << 20

	cases := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"glb 扩展名", "chair.glb", "application/octet-stream", 1024, nil},
		{"大写扩展名", "CHAIR.GLB", "", 1024, nil},
		{"正确 MIME 但无扩展名", "chair", "model/gltf-binary", 1024, nil},
		{"错误类型", "model.txt", "text/plain", 1024, service.ErrInvalidFileType},
		{"超出大小上限", "big.glb", "model/gltf-binary", maxBytes + 1, service.ErrFileTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.ValidateModelUpload(tc.filename, tc.contentType, tc.size, maxBytes)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateModelUpload(%q, %q) = %v, want %v", tc.filename, tc.contentType, err, tc.wantErr)
			}
		})
	}
}

// 同名文件紧接着上传两次也必须得到不同的存储名.
func TestStoredNameUnique(t *testing.T) {
	a := service.StoredName("chair.glb")
	b := service.StoredName("chair.glb")

	if a == b {
		t.Fatalf("two stored names collide: %q", a)
	}
}

func TestStoredNameSanitizesWhitespace(t *testing.T) {
	got := service.StoredName("my  office   chair.glb")

	if strings.ContainsAny(got, " \t") {
		t.Errorf("stored name contains whitespace: %q", got)
	}

	if !strings.HasSuffix(got, "_my_office_chair.glb") {
		t.Errorf("stored name = %q, want *_my_office_chair.glb", got)
	}
}

func TestStoredNameStripsPath(t *testing.T) {
	got := service.StoredName("../../etc/passwd.glb")

	if strings.Contains(got, "/") {
		t.Errorf("stored name contains path separator: %q", got)
	}
}
