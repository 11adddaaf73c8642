package scoring

import "errors"

var (
	// ErrProjectNotFound 프로젝트를 찾을 수 없음
	ErrProjectNotFound = errors.New("project not found")

	// ErrCandidateNotFound 채널을 찾을 수 없음
	ErrCandidateNotFound = errors.New("candidate channel not found")

	// ErrScoringInProgress 배치 채점이 아직 끝나지 않음
	ErrScoringInProgress = errors.New("project scoring in progress")

	// ErrUnknownPolicy 알 수 없는 등급 정책
	ErrUnknownPolicy = errors.New("unknown grading policy")

	// ErrNoComparableChannels 비교 가능한 채널이 없음
	ErrNoComparableChannels = errors.New("no channel could be analyzed")

	// ErrUnknownSortOrder 알 수 없는 채널 정렬 기준
	ErrUnknownSortOrder = errors.New("unknown channel sort order")

	// ErrInvalidProject 프로젝트 입력값 오류
	ErrInvalidProject = errors.New("invalid project input")
)
