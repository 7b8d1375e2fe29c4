// Package golden compares values against JSON files stored in testdata/
// A missing file is written from the value, so the first run records the expectation.
package golden

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	lock      sync.Mutex
	callCount = make(map[*testing.T]int)
)

// AssertJSON compares obj with the next golden file of the calling test function
// depth is the number of helper frames between the test function and this call
func AssertJSON(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) bool {
	t.Helper()
	skip := 1 + depth

	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	lock.Lock()
	call, seen := callCount[t]
	callCount[t] = call + 1
	lock.Unlock()

	if !seen {
		t.Cleanup(func() {
			lock.Lock()
			delete(callCount, t)
			lock.Unlock()
		})
	}

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			if err := create(filename, objJSON); err != nil {
				t.Fatal(err)
			}

			return true
		}

		t.Fatal(err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("golden file %s", filename)
		return false
	}

	return true
}

func create(filename string, b []byte) error {
	logrus.WithField("filename", filename).Info("writing golden file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(b, '\n'), 0644)
}
