package domain

import (
	"errors"
	"testing"

	"github.com/clanbase/backend/internal/model"
	"github.com/clanbase/backend/internal/repository"
	"github.com/clanbase/backend/pkg/testutil"
	"github.com/clanbase/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserDomain() *userDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewRewardHistoryRepository(),
		newTestReferralDomain(),
	)
}

func Test_userDomain_Register(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	userDomain := newTestUserDomain()

	_, err := userDomain.Register(ctx, &model.RegisterRequest{})
	require.Equal(t, "Not allow empty name", err.Error())

	resp, err := userDomain.Register(ctx, &model.RegisterRequest{Name: "newcomer"})
	require.NoError(t, err)
	require.Equal(t, "newcomer", resp.User.Name)
	require.Len(t, resp.User.ReferralCode, 9)

	// The access token authenticates as the new user.
	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, info.ID)
	require.Equal(t, "newcomer", info.Name)

	_, err = userDomain.Register(ctx, &model.RegisterRequest{Name: "newcomer"})
	require.Equal(t, "This name is already taken", err.Error())
}

func Test_userDomain_Register_withReferralCode(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	userDomain := newTestUserDomain()

	resp, err := userDomain.Register(ctx, &model.RegisterRequest{
		Name:         "invited",
		ReferralCode: testutil.User1.ReferralCode,
	})
	require.NoError(t, err)

	referralRepo := repository.NewReferralRepository()
	referral, err := referralRepo.GetByReferredUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, referral.ReferrerUserID)
	require.False(t, referral.RewardGiven)

	// A rejected code rolls the whole registration back.
	_, err = userDomain.Register(ctx, &model.RegisterRequest{
		Name:         "ghost",
		ReferralCode: "nosuchcode",
	})
	require.Equal(t, "Invalid referral code", err.Error())

	userRepo := repository.NewUserRepository()
	_, err = userRepo.GetByName(ctx, "ghost")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	userDomain := newTestUserDomain()

	_, err := userDomain.GetMe(ctx, &model.GetMeRequest{})
	require.Equal(t, "You need to authenticate before", err.Error())

	resp, err := userDomain.GetMe(
		testutil.MockContextWithUserID(ctx, testutil.User1.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.Equal(t, testutil.User1.Name, resp.User.Name)
}

func Test_userDomain_GetRewardHistory(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	userDomain := newTestUserDomain()
	referralDomain := newTestReferralDomain()

	_, err := referralDomain.Create(
		testutil.MockContextWithUserID(ctx, testutil.User2.ID),
		&model.CreateReferralRequest{ReferralCode: testutil.User1.ReferralCode})
	require.NoError(t, err)

	credit, err := referralDomain.CreditIfPending(ctx, &model.CreditReferralRequest{
		ReferredUserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.True(t, credit.Credited)

	resp, err := userDomain.GetRewardHistory(
		testutil.MockContextWithUserID(ctx, testutil.User1.ID),
		&model.GetRewardHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rewards, 1)
	require.Equal(t, uint64(100), resp.Rewards[0].Amount)
	require.Equal(t, "referral", resp.Rewards[0].Reason)

	// The referred user earned nothing.
	other, err := userDomain.GetRewardHistory(
		testutil.MockContextWithUserID(ctx, testutil.User2.ID),
		&model.GetRewardHistoryRequest{})
	require.NoError(t, err)
	require.Empty(t, other.Rewards)
}
