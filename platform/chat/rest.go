package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultTimeout = 5 * time.Second

const (
	fmtMember     = "%s/guilds/%d/members/%d"
	fmtMemberRole = "%s/guilds/%d/members/%d/roles/%d"
)

type restService struct {
	base   string
	client *http.Client
	token  string
}

// RESTService returns a Service implementation backed by the platform's REST
// API, authenticated with a bot token.
func RESTService(base, token string) Service {
	return &restService{
		base: base,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		token: token,
	}
}

func (s *restService) Member(guildID, memberID uint64) (*Member, error) {
	res, err := s.do("GET", fmt.Sprintf(fmtMember, s.base, guildID, memberID))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, wrapError(ErrMemberNotFound, "%d in guild %d", memberID, guildID)
	}

	if res.StatusCode != http.StatusOK {
		return nil, wrapError(ErrRequestFailed, "member fetch returned %d", res.StatusCode)
	}

	p := payloadMember{}

	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, err
	}

	return p.member()
}

func (s *restService) GrantRole(guildID, memberID, roleID uint64) error {
	return s.roleCommand("PUT", guildID, memberID, roleID)
}

func (s *restService) RevokeRole(guildID, memberID, roleID uint64) error {
	return s.roleCommand("DELETE", guildID, memberID, roleID)
}

func (s *restService) do(method, url string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bot %s", s.token))

	return s.client.Do(req)
}

func (s *restService) roleCommand(method string, guildID, memberID, roleID uint64) error {
	res, err := s.do(
		method,
		fmt.Sprintf(fmtMemberRole, s.base, guildID, memberID, roleID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return wrapError(ErrMemberNotFound, "%d in guild %d", memberID, guildID)
	}

	if res.StatusCode != http.StatusNoContent {
		return wrapError(ErrRequestFailed, "role %s returned %d", method, res.StatusCode)
	}

	return nil
}

// The platform encodes ids as decimal strings on the wire.
type payloadMember struct {
	Nick  string   `json:"nick"`
	Roles []string `json:"roles"`
	User  struct {
		ID         string `json:"id"`
		GlobalName string `json:"global_name"`
		Username   string `json:"username"`
	} `json:"user"`
}

func (p payloadMember) member() (*Member, error) {
	id, err := strconv.ParseUint(p.User.ID, 10, 64)
	if err != nil {
		return nil, wrapError(ErrRequestFailed, "malformed member id '%s'", p.User.ID)
	}

	roles := make([]uint64, 0, len(p.Roles))

	for _, r := range p.Roles {
		roleID, err := strconv.ParseUint(r, 10, 64)
		if err != nil {
			return nil, wrapError(ErrRequestFailed, "malformed role id '%s'", r)
		}

		roles = append(roles, roleID)
	}

	name := p.Nick
	if name == "" {
		name = p.User.GlobalName
	}
	if name == "" {
		name = p.User.Username
	}

	return &Member{
		ID:          id,
		DisplayName: name,
		Roles:       roles,
	}, nil
}
