//go:build !android

package utils

// EnsureStorageDir 桌面平台由 gdata 自行创建目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 桌面平台不需要固定路径
func GetStoragePath() string {
	return ""
}
