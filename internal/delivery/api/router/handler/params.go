package handler

import (
	domainerrors "tasker/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	ParamUserID = "user_id"
	ParamTaskID = "task_id"
)

// pathOwnerID parses the owner segment. RequireOwner has already matched it
// against the token, so a value that is not a UUID cannot belong to anyone.
func pathOwnerID(c echo.Context) (uuid.UUID, error) {
	ownerID, err := uuid.Parse(c.Param(ParamUserID))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrForbidden)
	}

	return ownerID, nil
}

// pathTaskIDs parses owner and task segments. A malformed task id is reported
// exactly like a missing task.
func pathTaskIDs(c echo.Context) (ownerID, taskID uuid.UUID, err error) {
	ownerID, err = pathOwnerID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	taskID, err = uuid.Parse(c.Param(ParamTaskID))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.WithStack(domainerrors.ErrTaskNotFound)
	}

	return ownerID, taskID, nil
}
