package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (account e-mail) is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

const (
	MsgUserNotFound          = "유저를 찾을 수 없습니다."
	MsgDuplicatedUser        = "중복된 유저입니다."
	MsgUnauthorizedUser      = "권한이 없는 유저의 요청입니다."
	MsgSelfInterviewNotFound = "셀프 인터뷰를 찾을 수 없습니다."
	MsgExperienceNotFound    = "경력을 찾을 수 없습니다."
	MsgLicenseNotFound       = "자격증을 찾을 수 없습니다."
	MsgPrizeNotFound         = "수상 내역을 찾을 수 없습니다."
	MsgProjectNotFound       = "프로젝트를 찾을 수 없습니다."
	MsgInvalidImage          = "적합한 이미지가 아닙니다."
	MsgUnverifiedUser        = "이메일 인증이 되지 않은 사용자입니다."
	MsgInvalidLogin          = "아이디 또는 비밀번호가 일치하지 않습니다."
	MsgInvalidCode           = "인증 코드가 일치하지 않습니다."
	MsgForbidden             = "접근 권한이 없습니다."
	MsgUnauthenticated       = "로그인이 필요합니다."
)
