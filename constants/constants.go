package constants

// Thông báo lỗi dùng chung
const (
	ERROR_INTERNAL_ERROR       = "Lỗi hệ thống"
	ERROR_INPUT                = "Dữ liệu đầu vào không hợp lệ"
	ERROR_PARSE_DATA_TO_LOCALS = "Lỗi đọc dữ liệu đã kiểm tra"
	DATA_INPUT_IS_NOT_NUMBER   = "Dữ liệu đầu vào không phải là số"
	NOT_FOUND_RECORDS          = "Không tìm thấy dữ liệu"
	ERROR_GENERIC              = "Đã có lỗi xảy ra, vui lòng thử lại"
	ERROR_LOAD_LIST            = "Không thể tải danh sách"
	ERROR_UPDATE               = "Cập nhật thất bại"
	ERROR_CREATE               = "Tạo mới thất bại"
	ERROR_DELETE               = "Xoá thất bại"
	ERROR_UPSTREAM             = "Không thể kết nối tới máy chủ"
	CONFIRMATION_REQUIRED      = "Vui lòng xác nhận thao tác trước khi thực hiện"
	LOADING                    = "Đang tải..."
	EMPTY_LIST                 = "Không có dữ liệu"
)

// Phiên đăng nhập
const (
	MISSING_LOGIN_INPUT = "Vui lòng nhập email và mật khẩu"
	LOGIN_FAILED        = "Đăng nhập thất bại"
	NOT_LOGGED_IN       = "Vui lòng đăng nhập"
	SESSION_INVALID     = "Phiên đăng nhập không hợp lệ hoặc đã hết hạn"
	LOGOUT_SUCCESS      = "Đăng xuất thành công"
)

// Thanh toán
const (
	CHECKOUT_FAILED          = "Đặt hàng thất bại, vui lòng thử lại"
	CHECKOUT_EMPTY_CART      = "Giỏ hàng trống"
	CHECKOUT_NO_ADDRESS      = "Vui lòng chọn địa chỉ giao hàng"
	CHECKOUT_DRAFT_NOT_FOUND = "Phiên thanh toán đã hết hạn, vui lòng tải lại trang"
	VOUCHER_INVALID          = "Mã giảm giá không hợp lệ"
	VOUCHER_EMPTY            = "Vui lòng nhập mã giảm giá"
	REQUIRED_FIELD           = "Trường này là bắt buộc"
	PHONE_TOO_SHORT          = "Số điện thoại phải có ít nhất 8 ký tự"
	INVALID_PAYMENT_METHOD   = "Phương thức thanh toán không hợp lệ"
	INVALID_SHIPPING_METHOD  = "Phương thức vận chuyển không hợp lệ"
	PAYMENT_SUCCESS          = "Thanh toán thành công"
	PAYMENT_FAILED           = "Thanh toán thất bại"
)

// Quản trị
const (
	INVALID_FILTER            = "Bộ lọc không hợp lệ"
	INVALID_STATUS_TRANSITION = "Không thể chuyển sang trạng thái này"
	INVALID_ROLE              = "Vai trò không hợp lệ"
	INVALID_TIER              = "Hạng thành viên không hợp lệ"
	UNKNOWN_ACTION            = "Thao tác không được hỗ trợ"
	BULK_PARTIAL_FAILURE      = "%d/%d thao tác không thành công"
)

// Địa chỉ
const (
	GEO_LOAD_FAILED = "Không thể tải danh sách địa giới hành chính"
)

// Phí vận chuyển mặc định khi không lấy được báo giá động (VND)
const (
	DEFAULT_BASE_SHIPPING_FEE  int64 = 30000
	FAST_SHIPPING_SURCHARGE    int64 = 10000
	EXPRESS_SHIPPING_SURCHARGE int64 = 20000
	FREE_SHIPPING_THRESHOLD    int64 = 1000000
)
