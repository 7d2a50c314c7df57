package handler

import "github.com/99minutos/marketplace-system/internal/core/ports"

func toRegisterInput(req registerRequest) ports.RegisterAccountInput {
	return ports.RegisterAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller,
	}
}

func toUpdateAccountInput(id string, req updateAccountRequest) ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		ID:        id,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}

func toManageAccountInput(id string, req manageAccountRequest) ports.ManageAccountInput {
	return ports.ManageAccountInput{ID: id, IsActive: req.IsActive, IsSeller: req.IsSeller}
}

func toAccountResponse(v ports.AccountView) accountResponse {
	return accountResponse{
		ID:          v.ID,
		Email:       v.Email,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		IsSeller:    v.IsSeller,
		DateJoined:  v.DateJoined,
		IsActive:    v.IsActive,
		IsStaff:     v.IsStaff,
		IsSuperuser: v.IsSuperuser,
	}
}

func toAccountResponses(views []ports.AccountView) []accountResponse {
	out := make([]accountResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toAccountResponse(v))
	}
	return out
}
