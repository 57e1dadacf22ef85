package app

import "go.trai.ch/genie/internal/core/domain"

// CurrentUserKey identifies the signed-in user.
func CurrentUserKey() domain.QueryKey {
	return domain.NewQueryKey("user", "current")
}

// AllAppsKey matches every app list.
func AllAppsKey() domain.QueryKey {
	return domain.NewQueryKey("apps")
}

// AppKey identifies the detail of one app.
func AppKey(id int64) domain.QueryKey {
	return domain.NewQueryKey("app", id)
}

// MyAppsKey identifies a page of the signed-in user's apps.
func MyAppsKey(q domain.AppQuery) domain.QueryKey {
	return domain.NewQueryKey("apps", "my", q)
}

// FeaturedAppsKey identifies a page of featured apps.
func FeaturedAppsKey(q domain.AppQuery) domain.QueryKey {
	return domain.NewQueryKey("apps", "featured", q)
}

func loginMutation() domain.MutationDescriptor {
	return domain.NewMutation("login")
}

func registerMutation() domain.MutationDescriptor {
	return domain.NewMutation("register")
}

func logoutMutation() domain.MutationDescriptor {
	return domain.NewMutation("logout")
}

func createAppMutation() domain.MutationDescriptor {
	return domain.NewMutation("create app", AllAppsKey())
}

func updateAppMutation(id int64) domain.MutationDescriptor {
	return domain.NewMutation("update app", AppKey(id), AllAppsKey())
}

func deleteAppMutation(id int64) domain.MutationDescriptor {
	return domain.NewMutation("delete app", AppKey(id), AllAppsKey())
}

func deployAppMutation(id int64) domain.MutationDescriptor {
	return domain.NewMutation("deploy app", AppKey(id), AllAppsKey())
}
