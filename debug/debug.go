package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Put    bool
	Patch  bool
	Delete bool
	Merge  bool
	Emit   bool
	Feed   bool
	RPC    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Put = boolEnv("REPLICA_DEBUG_PUT")
	d.Patch = boolEnv("REPLICA_DEBUG_PATCH")
	d.Delete = boolEnv("REPLICA_DEBUG_DELETE")
	d.Merge = boolEnv("REPLICA_DEBUG_MERGE")
	d.Emit = boolEnv("REPLICA_DEBUG_EMIT")
	d.Feed = boolEnv("REPLICA_DEBUG_FEED")
	d.RPC = boolEnv("REPLICA_DEBUG_RPC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Put() bool {
	return d.Put
}
func Patch() bool {
	return d.Patch
}
func Delete() bool {
	return d.Delete
}
func Merge() bool {
	return d.Merge
}
func Emit() bool {
	return d.Emit
}
func Feed() bool {
	return d.Feed
}
func RPC() bool {
	return d.RPC
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
