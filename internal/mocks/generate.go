package mocks

//go:generate mockery --name DocumentStore --srcpkg github.com/aevon-lab/tillsync/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Channel --srcpkg github.com/aevon-lab/tillsync/internal/devicesync --output ./devicesync --outpkg devicesyncmocks --with-expecter
