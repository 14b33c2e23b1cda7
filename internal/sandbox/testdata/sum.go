// internal/sandbox/testdata/sum.go
package main

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	// 读取数字个数
	scanner.Scan()
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "+"), 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid input:", err)
		os.Exit(1)
	}

	// 读取 n 个数字并计算总和
	sum := new(big.Int)
	for i := uint64(0); i < n; i++ {
		if !scanner.Scan() {
			fmt.Fprintln(os.Stderr, "invalid input: unexpected end of input")
			os.Exit(1)
		}
		num, ok := new(big.Int).SetString(strings.TrimSpace(scanner.Text()), 10)
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid input: %q is not an integer\n", scanner.Text())
			os.Exit(1)
		}
		sum.Add(sum, num)
	}

	fmt.Println(sum)
}
