// Package rand generates random test data
package rand

import (
	"bytes"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/oneconcern/datadesk/pkg/model"
)

var (
	onceSource  sync.Once
	rgen        *rand.Rand
	onceLetters sync.Once
	randMutex   sync.Mutex
	letters     []byte
)

func seed() {
	rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
}

func makeLetters() {
	// "a" pads the alphabet to cover the whole uint8 range, so "a" is slightly more frequent
	letters = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz0123456789a"), 7)
}

// Intn returns a random int in [0,n)
func Intn(n int) int {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Intn(n)
}

// Float64 returns a random float in [0.0,1.0)
func Float64() float64 {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Float64()
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func LetterString(n int) string {
	onceSource.Do(seed)
	onceLetters.Do(makeLetters)
	buf := make([]byte, n)
	randMutex.Lock()
	_, _ = rgen.Read(buf)
	randMutex.Unlock()
	for i, b := range buf {
		buf[i] = letters[b]
	}
	return string(buf)
}

// Table builds a random dataset. Even columns hold numbers, odd columns hold short labels.
//
// About nullRatio of all values are null. Labels and numbers are drawn from small sets,
// so that duplicate rows are likely on large tables.
func Table(rows, columns int, nullRatio float64) *model.Table {
	names := make([]string, columns)
	for j := range names {
		names[j] = "col" + strconv.Itoa(j)
	}

	data := make([][]model.Value, rows)
	for i := range data {
		row := make([]model.Value, columns)
		for j := range row {
			switch {
			case Float64() < nullRatio:
				row[j] = model.Null()
			case j%2 == 0:
				row[j] = model.Str(strconv.Itoa(Intn(10)))
			default:
				row[j] = model.Str(LetterString(1))
			}
		}
		data[i] = row
	}

	tbl, err := model.NewTable(names, data...)
	if err != nil {
		panic(err)
	}
	return tbl
}
