package errs

import "errors"

// 业务错误码，与捐赠引擎的各操作一一对应。
// 所有错误在操作入口处被校验触发后，整个操作回滚，不产生任何副作用。

// 参数校验错误（调用方可修正输入后重试）
var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidMilestoneCount = errors.New("invalid milestone count (must be 1-5)")
	ErrInvalidPercentages    = errors.New("milestone percentages must sum to 100")
	ErrDescriptionTooLong    = errors.New("description too long (max 100 chars)")
	ErrNameTooLong           = errors.New("pool name too long (max 50 chars)")
)

// 状态机错误（需等待或先达成正确状态）
var (
	ErrMilestoneNotPending   = errors.New("milestone is not in pending status")
	ErrMilestoneNotApproved  = errors.New("milestone is not approved")
	ErrDeadlineNotReached    = errors.New("campaign deadline has not been reached")
	ErrAllMilestonesComplete = errors.New("all milestones are already complete")
)

// 资金错误
var ErrInsufficientFunds = errors.New("insufficient funds")

// 算术溢出，对当前操作而言是致命错误，必须使整个操作失败
var ErrMathOverflow = errors.New("arithmetic overflow")

// 授权与存在性错误
var (
	ErrUnauthorized      = errors.New("caller is not the stored authority")
	ErrNotFound          = errors.New("record not found")
	ErrPoolExists        = errors.New("pool already exists")
	ErrCampaignExists    = errors.New("campaign already exists for this pool")
	ErrMilestoneExists   = errors.New("milestone already initialized")
	ErrMilestoneMismatch = errors.New("milestone does not belong to campaign")
	ErrRecipientMismatch = errors.New("recipient does not match campaign recipient")
	ErrDonorMismatch     = errors.New("donation record does not belong to caller")
	ErrPoolMismatch      = errors.New("donation record does not belong to campaign pool")
)

// IsValidation 判断是否为参数校验类错误
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidMilestoneCount) ||
		errors.Is(err, ErrInvalidPercentages) ||
		errors.Is(err, ErrDescriptionTooLong) ||
		errors.Is(err, ErrNameTooLong)
}

// IsStateGuard 判断是否为状态机类错误
func IsStateGuard(err error) bool {
	return errors.Is(err, ErrMilestoneNotPending) ||
		errors.Is(err, ErrMilestoneNotApproved) ||
		errors.Is(err, ErrDeadlineNotReached) ||
		errors.Is(err, ErrAllMilestonesComplete)
}
