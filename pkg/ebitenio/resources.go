package ebitenio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// ErrUnknownImage 图片名称未注册
var ErrUnknownImage = errors.New("unknown image")

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// DefaultFace 7x13 点阵字体
func DefaultFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// LoadFace 从 fsys 读取 TrueType/OpenType 字体
//
// name 为空时返回 DefaultFace。
func LoadFace(fsys fs.FS, name string, size float64) (text.Face, error) {
	if name == "" {
		return DefaultFace(), nil
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
	}
	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// LoadImage 解码 PNG 或 JPEG 图片
func LoadImage(fsys fs.FS, name string) (*ebiten.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadImages 注册 dir 下所有图片，名称为去掉扩展名的文件名
//
// 返回注册的数量。目录中无法解码的文件会导致整体失败。
func (s *Surface) LoadImages(fsys fs.FS, dir string) (int, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read image dir %s: %w", dir, err)
	}
	n := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if !imageExts[ext] {
			continue
		}
		img, err := LoadImage(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return n, err
		}
		name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		s.RegisterImage(name, img)
		n++
	}
	log.Printf("[Surface] 从 %s 注册 %d 张图片", dir, n)
	return n, nil
}
