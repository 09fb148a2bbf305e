package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberSuffixLength = 4
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderNumber builds an order number like BB1693526400000A7K2. The
// millisecond timestamp keeps numbers sortable; the random suffix covers two
// orders landing in the same millisecond.
func GenerateOrderNumber() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, orderNumberSuffixLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}

	return fmt.Sprintf("BB%d%s", time.Now().UnixMilli(), string(b))
}
