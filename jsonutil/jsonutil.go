package jsonutil

import (
	"encoding/json"
	"log"
	"os"
)

func MustString(document interface{}) string {
	s, err := String(document)
	if err != nil {
		log.Fatal(err)
	}
	return s
}

func String(document interface{}) (string, error) {
	b, err := json.MarshalIndent(document, "", "\t")
	return string(b), err
}

func Write(document interface{}, pathname string) error {
	b, err := json.MarshalIndent(document, "", "\t")
	if err != nil {
		return err
	}
	b = append(b, '\n') // I wish there was a less wasteful way to do this
	return os.WriteFile(pathname, b, 0666)
}
