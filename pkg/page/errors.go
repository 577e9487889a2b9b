package page

import (
	"errors"

	"github.com/decker502/nerdlayout/pkg/layout"
)

// 运行时错误
var (
	// ErrMissingAttribute 渲染或初始化需要的属性不存在
	ErrMissingAttribute = layout.ErrMissingAttribute
	// ErrReservedDelimiter 单元格或条目的值包含 ';' 或 ','
	ErrReservedDelimiter = errors.New("value contains a reserved delimiter")
	// ErrReservedValue 单元格的值与空单元格标记相同
	ErrReservedValue = errors.New("value is reserved for empty cells")
	// ErrInvalidIndex 行、列或条目下标越界
	ErrInvalidIndex = errors.New("invalid index")
	// ErrInvalidItem 条目为空，或工具栏条目不是 label:icon 格式
	ErrInvalidItem = errors.New("invalid toolbar item")
	// ErrInvalidAttribute 属性存在但取值无效（例如列数不是正数）
	ErrInvalidAttribute = errors.New("invalid attribute value")
)

// 页面管理器错误
var (
	ErrUnknownPage      = errors.New("unknown page")
	ErrDuplicatePage    = errors.New("duplicate page name")
	ErrInvalidReference = errors.New("invalid component reference")
	ErrNoPage           = errors.New("no page selected")
)
