package manager

import (
	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/lib/crypto/client"
)

// checkInitiator rejects transactions initiated in the name of an instance.
// Instances only act through messages they emit themselves.
func (m *managerImpl) checkInitiator(tx *contract.Tx) error {
	if m.instances.Contains(tx.Initiator) {
		return contract.ErrForbidden.More("initiator %s is a contract instance", tx.Initiator)
	}
	_, err := loadContractInfo(sandbox.NewXModelCache(m.model), tx.Initiator)
	if err == nil {
		return contract.ErrForbidden.More("initiator %s is a contract instance", tx.Initiator)
	}
	if !contract.ErrContractNotFound.Equal(contract.CastError(err)) {
		return err
	}
	return nil
}

// verifyAuth checks that the initiator and every AuthRequire account signed the tx.
func (m *managerImpl) verifyAuth(tx *contract.Tx) error {
	found := false
	for _, ak := range tx.AuthRequire {
		if ak == tx.Initiator {
			found = true
			break
		}
	}
	if !found {
		return contract.ErrUnauthorized.More("initiator %s not in auth require", tx.Initiator)
	}
	if len(tx.AuthRequireSigns) != len(tx.AuthRequire) {
		return contract.ErrUnauthorized.More("expect %d signatures, got %d",
			len(tx.AuthRequire), len(tx.AuthRequireSigns))
	}

	digest, err := tx.Digest()
	if err != nil {
		return err
	}
	for i, ak := range tx.AuthRequire {
		si := tx.AuthRequireSigns[i]
		ok, err := client.VerifySign(ak, si.PublicKey, si.Sign, digest)
		if err != nil {
			return contract.ErrUnauthorized.More("signature of %s: %v", ak, err)
		}
		if !ok {
			return contract.ErrUnauthorized.More("bad signature of %s", ak)
		}
	}
	return nil
}
