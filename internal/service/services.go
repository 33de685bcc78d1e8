package service

import (
	"github.com/deppfellow/shoppingcart/internal/lib/job"
	"github.com/deppfellow/shoppingcart/internal/lib/password"
	"github.com/deppfellow/shoppingcart/internal/lib/token"
	"github.com/deppfellow/shoppingcart/internal/repository"
	"github.com/deppfellow/shoppingcart/internal/server"
	"golang.org/x/crypto/bcrypt"
)

type Services struct {
	Auth    *AuthService
	Member  *MemberService
	Product *ProductService
	Cart    *CartService
	Order   *OrderService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	hasher := password.NewHasher(bcrypt.DefaultCost)
	tokens := token.NewProvider(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTL)

	memberService := NewMemberService(repos.Member, hasher, s.Job, s.Logger)
	cartService := NewCartService(repos.Cart, repos.Product)

	return &Services{
		Auth:    NewAuthService(memberService, tokens),
		Member:  memberService,
		Product: NewProductService(repos.Product, repos.ProductCache),
		Cart:    cartService,
		Order:   NewOrderService(repos.Order, cartService, repos.Member, s.Events, s.Job, s.Logger),
		Job:     s.Job,
	}, nil
}
