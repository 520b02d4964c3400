// ABOUTME: C bridge exposing the detector to JNI and other FFI callers
// ABOUTME: Build with: go build -buildmode=c-shared -o libmeowtalk.so ./bridge
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/meowtalk-labs/meowtalk-go/pkg/meowtalk"
)

var (
	detectorMu sync.RWMutex
	detector   *meowtalk.Detector
)

// errorJSON builds the error form callers parse when classification fails
func errorJSON(message string) string {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return `{"error":"internal error"}`
	}
	return string(data)
}

// InitDetector loads the sample library at libraryPath and prepares the
// detector. sampleRate of 0 selects the default. Returns 0 on success,
// -1 on failure.
//
//export InitDetector
func InitDetector(libraryPath *C.char, sampleRate C.int) C.int {
	if libraryPath == nil {
		return -1
	}

	d, err := meowtalk.NewDetector(meowtalk.Config{
		LibraryPath: C.GoString(libraryPath),
		SampleRate:  int(sampleRate),
	})
	if err != nil {
		return -1
	}

	detectorMu.Lock()
	detector = d
	detectorMu.Unlock()
	return 0
}

// ProcessAudioData classifies length samples starting at data and returns
// a heap-allocated JSON string the caller owns. Failures return a JSON
// object with a single "error" key. The returned string must be released
// with FreeCString exactly once; the input buffer is copied before any
// processing and never retained past return.
//
//export ProcessAudioData
func ProcessAudioData(data *C.float, length C.int) *C.char {
	detectorMu.RLock()
	d := detector
	detectorMu.RUnlock()

	if d == nil {
		return C.CString(errorJSON("detector not initialized"))
	}
	if data == nil {
		return C.CString(errorJSON("audio data is null"))
	}
	if length <= 0 {
		return C.CString(errorJSON("audio length must be positive"))
	}

	samples := unsafe.Slice((*float32)(unsafe.Pointer(data)), int(length))

	result, err := d.ProcessAudio(samples)
	if err != nil {
		return C.CString(errorJSON(err.Error()))
	}

	return C.CString(result.JSON())
}

// FreeCString releases a string returned by ProcessAudioData. Passing nil
// is a no-op; passing the same pointer twice is undefined.
//
//export FreeCString
func FreeCString(s *C.char) {
	if s == nil {
		return
	}
	C.free(unsafe.Pointer(s))
}

func main() {}
