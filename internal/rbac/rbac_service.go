package rbac

import (
	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// Service wraps the casbin enforcer behind the single question the
// middleware asks: may this role perform this action on this resource.
type Service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(modelPath, policyPath string, logger ...*zap.Logger) (*Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}

	return &Service{enforcer: enforcer, logger: l}, nil
}

func (s *Service) Allowed(role, resource, action string) bool {
	ok, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false
	}
	return ok
}
