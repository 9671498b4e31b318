package main

import (
	"fmt"
	"io"

	"phonosim/internal/observ"
	"phonosim/internal/simcache"
)

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}

func printCacheStats(out io.Writer, cache *simcache.Cache) {
	if out == nil || cache == nil {
		return
	}
	st := cache.Stats()
	if _, err := fmt.Fprintf(out, "feature cache: %d pairs, %d hits, %d computations\n", st.Entries, st.Hits, st.Computations); err != nil {
		panic(err)
	}
}
