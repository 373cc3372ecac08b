package config

import (
	"os"
	"strconv"
	"strings"
)

// Exist сообщает, задана ли переменная окружения key (в том числе пустой строкой).
func Exist(key string) bool {
	_, exist := os.LookupEnv(key)
	return exist
}

// GetEnv возвращает значение переменной без пробелов по краям.
func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// GetIntEnv разбирает целое значение. Некорректное значение дает 0, и ReadConfig подставляет значение по умолчанию.
func GetIntEnv(key string) int {
	if v, err := strconv.Atoi(GetEnv(key)); err == nil {
		return v
	}
	return 0
}

// GetBoolEnv принимает значения strconv.ParseBool, а также "yes"/"no".
func GetBoolEnv(key string) bool {
	switch strings.ToLower(GetEnv(key)) {
	case "yes", "y", "on":
		return true
	}
	v, _ := strconv.ParseBool(GetEnv(key))
	return v
}
