package servehttp

import (
	"net/http"

	"bneibrit/common"
	"bneibrit/domain/benefits"
	"bneibrit/domain/contract"
	"bneibrit/domain/employer"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type employersResponse struct {
	Employers    []benefits.EmployerWithBenefits `json:"employers"`
	TotalBalance float64                         `json:"totalBalance"`
}

func (s *Server) handleQueryEmployers(c *gin.Context) {
	c.JSON(http.StatusOK, &employersResponse{Employers: s.Workspace.Employers(), TotalBalance: s.Workspace.TotalBalance()})
}

func (s *Server) handleCreateEmployer(c *gin.Context) {
	creation := employer.Creation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	created, err := s.Workspace.AddEmployer(c.Request.Context(), creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleDetailEmployer(c *gin.Context) {
	e, err := s.Workspace.Employer(pathID(c, "id"))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) handleUpdateEmployer(c *gin.Context) {
	id := pathID(c, "id")
	update := employer.Update{}
	if err := c.ShouldBindBodyWith(&update, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	updated, err := s.Workspace.UpdateEmployer(id, update)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDetailContract(c *gin.Context) {
	config, err := s.Workspace.ContractConfig(pathID(c, "id"))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &config)
}

func (s *Server) handleUpdateContract(c *gin.Context) {
	id := pathID(c, "id")
	config := contract.Config{}
	if err := c.ShouldBindBodyWith(&config, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	config.EmployerID = id
	if err := s.Workspace.UpdateContractConfig(config); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &config)
}
