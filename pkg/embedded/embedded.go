// Package embedded 提供页面资源的统一访问接口
//
// 资源分为两个根目录：
//   - assets/ 图标、字体等二进制资源
//   - data/   页面布局（*.txt）和配置（*.yaml）
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，因此 embed.FS 变量声明在
// 使用它的 main 包中，通过 Init 交给本包。开发时也可以用 InitFromDir
// 直接读取磁盘上的资源目录。
//
// 使用前必须调用 Init 或 InitFromDir。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// 资源根目录前缀
const (
	AssetsRoot = "assets"
	DataRoot   = "data"
)

// ErrNotInitialized 在 Init 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	assetsFS    fs.FS
	dataFS      fs.FS
	initialized bool
)

// Init 设置资源文件系统
// 两个文件系统都以仓库根目录为根，即路径形如 "assets/icons/a.png"
func Init(assets, data fs.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// InitFromDir 从磁盘目录初始化，dir 下应包含 assets/ 和 data/
func InitFromDir(dir string) error {
	for _, root := range []string{AssetsRoot, DataRoot} {
		info, err := os.Stat(filepath.Join(dir, root))
		if err != nil {
			return fmt.Errorf("resource dir %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("resource dir %s: %s is not a directory", dir, root)
		}
	}
	root := os.DirFS(dir)
	Init(root, root)
	return nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// Reset 清除初始化状态
func Reset() {
	assetsFS = nil
	dataFS = nil
	initialized = false
}

// normalize 统一路径分隔符并去掉 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// resolve 按路径前缀选择文件系统
func resolve(path string) (fs.FS, string, error) {
	if !initialized {
		return nil, "", ErrNotInitialized
	}
	path = normalize(path)
	switch {
	case path == AssetsRoot || strings.HasPrefix(path, AssetsRoot+"/"):
		return assetsFS, path, nil
	case path == DataRoot || strings.HasPrefix(path, DataRoot+"/"):
		return dataFS, path, nil
	}
	return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// Open 打开资源文件
func Open(path string) (fs.File, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(name)
}

// ReadFile 读取资源文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配资源文件
func Glob(pattern string) ([]string, error) {
	fsys, name, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, name)
}

// ReadDir 读取资源目录
func ReadDir(path string) ([]fs.DirEntry, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(fsys, name)
}

// Sub 返回以指定目录为根的子文件系统
// 页面管理器用它读取 data/pages 下的布局文件
func Sub(dir string) (fs.FS, error) {
	fsys, name, err := resolve(dir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(fsys, name)
}

// Stat 获取资源文件信息
func Stat(path string) (fs.FileInfo, error) {
	file, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.Stat()
}
