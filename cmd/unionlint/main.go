// Command unionlint checks union declarations marked for union-generator.
//
// It can run standalone or as a vet tool:
//
//	go vet -vettool=$(which unionlint) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"union-generator/unionlint"
)

func main() {
	singlechecker.Main(unionlint.Analyzer)
}
