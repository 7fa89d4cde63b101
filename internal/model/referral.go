package model

type Referral struct {
	ID             string `json:"id"`
	ReferrerUserID string `json:"referrer_user_id"`
	ReferredUserID string `json:"referred_user_id"`
	Code           string `json:"code"`
	RewardGiven    bool   `json:"reward_given"`
	JoinedAt       string `json:"joined_at"`
}

type CreateReferralRequest struct {
	ReferralCode string `json:"referral_code"`

	// ReferredUserID defaults to the requesting user when empty.
	ReferredUserID string `json:"referred_user_id"`
}

type CreateReferralResponse struct {
	Referral Referral `json:"referral"`
}

type CreditReferralRequest struct {
	ReferredUserID string `json:"referred_user_id"`

	// ActionID identifies the qualifying action for audit, e.g. a posted
	// content id.
	ActionID string `json:"action_id"`
}

type CreditReferralResponse struct {
	Credited bool `json:"credited"`
}
