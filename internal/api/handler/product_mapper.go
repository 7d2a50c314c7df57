package handler

import "github.com/99minutos/marketplace-system/internal/core/ports"

func toCreateProductInput(req productRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
}

func toUpdateProductInput(id string, req productRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		ID:          id,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
}

func toProductResponse(v ports.ProductView) productResponse {
	resp := productResponse{
		ID:          v.ID,
		SellerID:    v.SellerID,
		Description: v.Description,
		Price:       v.Price,
		Quantity:    v.Quantity,
		IsActive:    v.IsActive,
	}
	if v.Seller != nil {
		seller := toAccountResponse(*v.Seller)
		resp.Seller = &seller
	}
	return resp
}

func toProductPageResponse(p *ports.ProductPage) productPageResponse {
	results := make([]productResponse, 0, len(p.Items))
	for _, v := range p.Items {
		results = append(results, toProductResponse(v))
	}
	return productPageResponse{Count: p.Count, Page: p.Page, Limit: p.Limit, Results: results}
}
