package errorx

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	Conflict         Code = 100009

	// Membership codes
	InactiveCampaign      Code = 200001
	OutsideDateWindow     Code = 200002
	AlreadyJoined         Code = 200003
	CooldownNotElapsed    Code = 200004
	InvalidClanInCampaign Code = 200005

	// Referral codes
	InvalidReferralCode Code = 300001
	SelfReferral        Code = 300002
	AlreadyReferred     Code = 300003
)
