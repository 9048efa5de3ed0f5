package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// GLBContentType 是 glTF 二进制文件的标准 MIME 类型.
const GLBContentType = "model/gltf-binary"

// ValidateModelUpload 在任何文件写入前做准入校验.
// 接受条件：声明的 MIME 为 model/gltf-binary，或文件名以 .glb 结尾（二者满足其一）.
// 超过大小上限的文件在缓冲前即被拒绝.
func ValidateModelUpload(filename, contentType string, size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, maxBytes)
	}

	if contentType == GLBContentType {
		return nil
	}

	if strings.HasSuffix(strings.ToLower(filename), ".glb") {
		return nil
	}

	return ErrInvalidFileType
}

// nameToken 以进程启动时刻的毫秒时间戳为起点单调递增，
// 保证同一进程生命周期内任意两次入库的存储名不同.
var nameToken = func() *atomic.Int64 {
	var v atomic.Int64

	v.Store(time.Now().UnixMilli())

	return &v
}()

// StoredName 由原始文件名派生唯一存储名：空白符连续片段折叠为单个下划线，
// 并冠以单调递增的数字令牌.
func StoredName(original string) string {
	base := filepath.Base(strings.TrimSpace(original))

	sanitized := strings.Join(strings.Fields(base), "_")
	if sanitized == "" || sanitized == "." {
		sanitized = "model.glb"
	}

	return fmt.Sprintf("%d_%s", nameToken.Add(1), sanitized)
}
