package chat

import (
	"time"

	"github.com/go-kit/kit/log"
)

type logService struct {
	logger log.Logger
	next   Service
}

// LogMiddleware given a Logger wraps the next Service with logging
// capabilities.
func LogMiddleware(logger log.Logger, store string) ServiceMiddleware {
	return func(next Service) Service {
		logger = log.With(
			logger,
			"service", "chat",
			"store", store,
		)

		return &logService{logger: logger, next: next}
	}
}

func (s *logService) Member(guildID, memberID uint64) (member *Member, err error) {
	defer func(begin time.Time) {
		ps := []interface{}{
			"duration_ns", time.Since(begin).Nanoseconds(),
			"guild_id", guildID,
			"member_id", memberID,
			"method", "Member",
		}

		if err != nil {
			ps = append(ps, "err", err)
		}

		_ = s.logger.Log(ps...)
	}(time.Now())

	return s.next.Member(guildID, memberID)
}

func (s *logService) GrantRole(guildID, memberID, roleID uint64) (err error) {
	defer func(begin time.Time) {
		ps := []interface{}{
			"duration_ns", time.Since(begin).Nanoseconds(),
			"guild_id", guildID,
			"member_id", memberID,
			"method", "GrantRole",
			"role_id", roleID,
		}

		if err != nil {
			ps = append(ps, "err", err)
		}

		_ = s.logger.Log(ps...)
	}(time.Now())

	return s.next.GrantRole(guildID, memberID, roleID)
}

func (s *logService) RevokeRole(guildID, memberID, roleID uint64) (err error) {
	defer func(begin time.Time) {
		ps := []interface{}{
			"duration_ns", time.Since(begin).Nanoseconds(),
			"guild_id", guildID,
			"member_id", memberID,
			"method", "RevokeRole",
			"role_id", roleID,
		}

		if err != nil {
			ps = append(ps, "err", err)
		}

		_ = s.logger.Log(ps...)
	}(time.Now())

	return s.next.RevokeRole(guildID, memberID, roleID)
}
