package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/dataunifier/pkg/constants"
)

// Example demonstrates writing the default output file with standard permissions.
func Example() {
	dir, err := os.MkdirTemp("", "dataunifier-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "out", constants.DefaultOutputFile)
	if err := os.MkdirAll(filepath.Dir(out), constants.DirPermissions); err != nil {
		panic(err)
	}
	if err := os.WriteFile(out, []byte("reading_date\n"), constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Println(filepath.Base(out))
	fmt.Printf("%o %o\n", constants.DirPermissions, constants.FilePermissions)
	// Output:
	// unified_file.csv
	// 755 644
}

// Example_delimiter shows the default delimiter as a rune.
func Example_delimiter() {
	fmt.Printf("%q\n", constants.DefaultDelimiter)
	// Output: ','
}
