package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	keyGuildID  = "guildID"
	keyLimit    = "limit"
	keyMemberID = "memberID"
)

func extractGuildID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[keyGuildID], 10, 64)
}

func extractLimit(r *http.Request) (uint, error) {
	param := r.URL.Query().Get(keyLimit)
	if param == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(limit), nil
}

func extractMemberID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[keyMemberID], 10, 64)
}
