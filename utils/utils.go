package utils

import (
	log "github.com/sirupsen/logrus"
	"os"
	"strings"
)

func IsFileExist(aFilepath string) bool {
	if _, err := os.Stat(aFilepath); err == nil {
		return true
	} else {
		return false
	}
}

// MakeDir creates dirPath and its parents, doing nothing when it already exists.
func MakeDir(dirPath string) (ret string, err error) {
	err = os.MkdirAll(dirPath, 0775)
	if err != nil {
		log.Errorf("mkdir error: %s, err: %s", dirPath, err)
		return "", err
	}
	return dirPath, nil
}

func RPartition(s string, sep string) (string, string, string) {
	parts := strings.SplitAfter(s, sep)
	if len(parts) == 1 {
		return "", "", parts[0]
	}
	return strings.Join(parts[0:len(parts)-1], ""), sep, parts[len(parts)-1]
}
