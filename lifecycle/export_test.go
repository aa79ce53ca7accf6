package lifecycle

import "gorm.io/gorm"

// SetBeforeWrite installs a hook that runs inside the transaction just
// before a versioned task update, letting tests interleave a competing
// writer.
func (e *Engine) SetBeforeWrite(fn func(tx *gorm.DB)) {
	e.beforeWrite = fn
}
