package model

// Indicators holds rolling columns aligned to PriceSeries.Bars.
// Entries that lack enough history are NaN.
type Indicators struct {
	SMA20   []float64
	SMA50   []float64
	BBUpper []float64
	BBLower []float64
}

// Clone returns a deep copy so derived series never share column storage.
func (ind *Indicators) Clone() *Indicators {
	if ind == nil {
		return &Indicators{}
	}
	return &Indicators{
		SMA20:   cloneFloats(ind.SMA20),
		SMA50:   cloneFloats(ind.SMA50),
		BBUpper: cloneFloats(ind.BBUpper),
		BBLower: cloneFloats(ind.BBLower),
	}
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
