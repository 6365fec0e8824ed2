package hdf5

import (
	"fmt"
	"strings"
)

// SplitPath splits a slash separated path into its components. Leading,
// trailing and repeated slashes are ignored, so "/", "" and "//" all yield
// no components.
func SplitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func splitPath(p string) []string { return SplitPath(p) }

// ParseAttrPath splits an attribute path of the form object@name, as in
// "/channel_data@class" or "/@version", into the absolute object path and
// the attribute name. The last @ separates the two.
func ParseAttrPath(p string) (objectPath, attrName string, err error) {
	if p == "" {
		return "", "", fmt.Errorf("empty attribute path")
	}
	at := strings.LastIndex(p, "@")
	if at == -1 {
		return "", "", fmt.Errorf("attribute path must contain '@' separator: %s", p)
	}
	objectPath, attrName = p[:at], p[at+1:]
	if attrName == "" {
		return "", "", fmt.Errorf("attribute name cannot be empty: %s", p)
	}
	if !strings.HasPrefix(objectPath, "/") {
		objectPath = "/" + objectPath
	}
	return objectPath, attrName, nil
}

// JoinAttrPath is the inverse of ParseAttrPath.
func JoinAttrPath(objectPath, attrName string) string {
	if objectPath == "/" {
		return "/@" + attrName
	}
	return objectPath + "@" + attrName
}
