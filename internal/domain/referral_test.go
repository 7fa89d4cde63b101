package domain

import (
	"testing"

	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestReferralDomain() *referralDomain {
	return NewReferralDomain(
		repository.NewReferralRepository(),
		repository.NewUserRepository(),
		repository.NewRewardHistoryRepository(),
	)
}

func Test_referralDomain_Create(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	referralDomain := newTestReferralDomain()

	_, err := referralDomain.Create(ctx, &model.CreateReferralRequest{
		ReferralCode: testutil.User1.ReferralCode,
	})
	require.Equal(t, "Not allow empty referred user", err.Error())

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	_, err = referralDomain.Create(ctxUser2, &model.CreateReferralRequest{})
	require.Equal(t, "Invalid referral code", err.Error())

	_, err = referralDomain.Create(ctxUser2, &model.CreateReferralRequest{
		ReferralCode: "nosuchcode",
	})
	require.Equal(t, "Invalid referral code", err.Error())

	// A user cannot use their own code.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = referralDomain.Create(ctxUser1, &model.CreateReferralRequest{
		ReferralCode: testutil.User1.ReferralCode,
	})
	require.Equal(t, "You cannot refer yourself", err.Error())

	// User1 refers user2.
	resp, err := referralDomain.Create(ctxUser2, &model.CreateReferralRequest{
		ReferralCode: testutil.User1.ReferralCode,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Referral.ReferrerUserID)
	require.Equal(t, testutil.User2.ID, resp.Referral.ReferredUserID)
	require.False(t, resp.Referral.RewardGiven)

	// A user is referred at most once, by anyone.
	_, err = referralDomain.Create(ctxUser2, &model.CreateReferralRequest{
		ReferralCode: testutil.User3.ReferralCode,
	})
	require.Equal(t, "This user was already referred", err.Error())
}

func Test_referralDomain_CreditIfPending(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	referralDomain := newTestReferralDomain()

	// Crediting a user nobody referred is a quiet no-op.
	resp, err := referralDomain.CreditIfPending(ctx, &model.CreditReferralRequest{
		ReferredUserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Credited)

	_, err = referralDomain.Create(
		testutil.MockContextWithUserID(ctx, testutil.User2.ID),
		&model.CreateReferralRequest{ReferralCode: testutil.User1.ReferralCode})
	require.NoError(t, err)

	// The first qualifying action credits the referrer.
	resp, err = referralDomain.CreditIfPending(ctx, &model.CreditReferralRequest{
		ReferredUserID: testutil.User2.ID,
		ActionID:       "post1",
	})
	require.NoError(t, err)
	require.True(t, resp.Credited)

	referralRepo := repository.NewReferralRepository()
	referral, err := referralRepo.GetByReferredUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.True(t, referral.RewardGiven)
	require.Equal(t, "post1", referral.ActionID.String)

	rewardHistoryRepo := repository.NewRewardHistoryRepository()
	rewards, err := rewardHistoryRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	require.Equal(t, uint64(100), rewards[0].Amount)
	require.Equal(t, "campaign_referral", rewards[0].CampaignID)

	// Every later trigger is ignored and the ledger stays at one row.
	resp, err = referralDomain.CreditIfPending(ctx, &model.CreditReferralRequest{
		ReferredUserID: testutil.User2.ID,
		ActionID:       "post2",
	})
	require.NoError(t, err)
	require.False(t, resp.Credited)

	rewards, err = rewardHistoryRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
}
