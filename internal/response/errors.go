package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Identity ──────────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrInvalidID        ErrCode = "INVALID_ID"
	ErrInvalidPayload   ErrCode = "INVALID_PAYLOAD"
	ErrInvalidTimeRange ErrCode = "INVALID_TIME_RANGE"
	ErrInvalidWeekKey   ErrCode = "INVALID_WEEK_KEY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Schedule-specific ─────────────────────────────────────────────
	ErrTeacherConflict  ErrCode = "TEACHER_SCHEDULE_CONFLICT"
	ErrClassConflict    ErrCode = "CLASS_SCHEDULE_CONFLICT"
	ErrScheduleInactive ErrCode = "SCHEDULE_INACTIVE"
	ErrClassInactive    ErrCode = "CLASS_INACTIVE"
	ErrTeacherInactive  ErrCode = "TEACHER_INACTIVE"
	ErrStudentInactive  ErrCode = "STUDENT_INACTIVE"
	ErrEmptySourceWeek  ErrCode = "EMPTY_SOURCE_WEEK"
	ErrNotEnrolled      ErrCode = "STUDENT_NOT_ENROLLED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Identity ──────────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Yêu cầu token xác thực."
	case ErrTokenInvalid:
		return "Token xác thực không hợp lệ."
	case ErrTokenExpired:
		return "Token xác thực đã hết hạn."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bạn không có quyền truy cập tài nguyên này."
	case ErrPermissionDenied:
		return "Bạn không có quyền thực hiện thao tác này."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidID:
		return "Định dạng ID không hợp lệ."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."
	case ErrInvalidTimeRange:
		return "Thời gian bắt đầu phải nhỏ hơn thời gian kết thúc."
	case ErrInvalidWeekKey:
		return "Định dạng tuần không hợp lệ (YYYY-Wnn)."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."
	case ErrConflict:
		return "Dữ liệu đã tồn tại."
	case ErrDependencyExists:
		return "Không thể xóa vì dữ liệu đang được sử dụng."

	// ─── Schedule-specific ─────────────────────────────────────────────
	case ErrTeacherConflict:
		return "Giáo viên đã có lịch dạy trùng thời gian này trong tuần được chọn."
	case ErrClassConflict:
		return "Lớp học đã có lịch dạy trùng thời gian này trong tuần được chọn."
	case ErrScheduleInactive:
		return "Lịch dạy đã bị xóa, không thể chỉnh sửa."
	case ErrClassInactive:
		return "Lớp học không còn hoạt động."
	case ErrTeacherInactive:
		return "Giáo viên không còn hoạt động."
	case ErrStudentInactive:
		return "Học sinh không còn hoạt động."
	case ErrEmptySourceWeek:
		return "Không tìm thấy lịch dạy nào trong tuần nguồn."
	case ErrNotEnrolled:
		return "Học sinh chưa đăng ký lịch dạy này."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Đã xảy ra lỗi hệ thống."
	default:
		return "Đã xảy ra lỗi không xác định."
	}
}
