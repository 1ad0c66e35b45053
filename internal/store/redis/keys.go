package redis

import "fmt"

const keyPrefix = "flightsearch"

func monitorKey(route string) string {
	return fmt.Sprintf("%s:monitor:%s", keyPrefix, route)
}

func historyKey(route string) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, route)
}

const (
	monitorPattern = keyPrefix + ":monitor:*"
	historyPattern = keyPrefix + ":history:*"
)
