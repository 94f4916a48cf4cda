package vim

import "errors"

// ErrBufferClosed is returned by operations on a closed Buffer.
var ErrBufferClosed = errors.New("buffer is closed")
