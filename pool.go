package snazy

import (
	"bytes"
	"sync"
)

const maxScratchCap = 64 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func acquireBuffer() *bytes.Buffer {
	b := bufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func releaseBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxScratchCap {
		return
	}
	b.Reset()
	bufferPool.Put(b)
}
