package service

import (
	"time"

	"github.com/kanenguyen264/library-management-sub008/internal/auth/domain"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() domain.Clock { return systemClock{} }
