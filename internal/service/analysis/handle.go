package analysis

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handle 외부 모델 핸들. 처음 Get 할 때 한 번만 초기화한다.
// 초기화 실패도 기억되어 이후 호출은 같은 에러를 돌려준다.
type Handle[T any] struct {
	name string
	init func() (T, error)

	once  sync.Once
	value T
	err   error
}

// NewHandle 지연 초기화 핸들
func NewHandle[T any](name string, init func() (T, error)) *Handle[T] {
	return &Handle[T]{name: name, init: init}
}

// StaticHandle 이미 만들어진 값
func StaticHandle[T any](name string, value T) *Handle[T] {
	return NewHandle(name, func() (T, error) { return value, nil })
}

// Get 값 반환 (최초 호출 시 초기화)
func (h *Handle[T]) Get() (T, error) {
	if h == nil {
		var zero T
		return zero, fmt.Errorf("model handle not configured")
	}

	h.once.Do(func() {
		log.Info().Str("model", h.name).Msg("Loading model handle...")
		h.value, h.err = h.init()
		if h.err != nil {
			log.Error().Err(h.err).Str("model", h.name).Msg("Model handle initialization failed")
			return
		}
		log.Info().Str("model", h.name).Msg("Model handle loaded")
	})

	return h.value, h.err
}
