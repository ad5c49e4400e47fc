package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInteger is wrapped by every FlexInt decode failure.
var ErrInvalidInteger = errors.New("invalid integer")

// FlexInt is an integer that also accepts a quoted numeric string in JSON.
// HTML number inputs post their value as a string ("3").
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInteger, err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = FlexInt{}
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%w %q", ErrInvalidInteger, s)
		}
		*f = FlexInt{Value: n, Set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w %s", ErrInvalidInteger, data)
	}
	i, err := n.Int64()
	if err != nil {
		fv, ferr := n.Float64()
		// Fractions truncate toward zero; anything outside int is rejected.
		if ferr != nil || fv >= math.MaxInt || fv < math.MinInt {
			return fmt.Errorf("%w %s", ErrInvalidInteger, n)
		}
		i = int64(fv)
	}
	*f = FlexInt{Value: int(i), Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}
