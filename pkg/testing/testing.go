package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root before tests run, so relative paths (logs/,
	// sqlite files) resolve the same way they do for cmd/server
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/sleep-telemetry-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)           // here runtime will return current file path
	dir := path.Join(path.Dir(filename), "..", "..") // and by double .. we will go to the project root
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
