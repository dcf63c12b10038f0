package application

import (
	"time"

	"github.com/google/uuid"
)

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type uuidGen struct{}

func (uuidGen) NewID() string { return uuid.NewString() }
