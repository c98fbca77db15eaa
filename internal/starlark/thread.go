package starlark

import (
	"sync"

	"go.starlark.net/starlark"
)

// Visits run concurrently across files, so threads are pooled rather than
// allocated per visited node. Plugin print() output is swallowed; a pass
// communicates through its return value only.
var threads = sync.Pool{
	New: func() any {
		return &starlark.Thread{
			Print: func(*starlark.Thread, string) {},
		}
	},
}

func getThread(name string) *starlark.Thread {
	t := threads.Get().(*starlark.Thread)
	t.Name = name
	return t
}

func putThread(t *starlark.Thread) {
	t.Name = ""
	threads.Put(t)
}
