package util

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateRandomNumber generates a random number between min and max (inclusive)
func GenerateRandomNumber(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// GenerateTrackingNumber produces a carrier-style tracking code for a
// shipped order.
func GenerateTrackingNumber() string {
	return fmt.Sprintf("CN%d%04d", time.Now().Unix(), rand.Intn(10000))
}
