package reconcile

import "fmt"

// Reconcile returns the operations that make remote match local.
//
// Deletes come first, in remote flattened order, for every remote document
// missing locally. Writes follow, in local flattened order, for every local
// document that is missing remotely or not Equal to its remote version.
// Both snapshots are read-only; the returned writes reference local documents.
func Reconcile(local, remote *Snapshot) ([]Operation, error) {
	localDocs, err := Flatten(local)
	if err != nil {
		return nil, fmt.Errorf("local snapshot: %w", err)
	}
	remoteDocs, err := Flatten(remote)
	if err != nil {
		return nil, fmt.Errorf("remote snapshot: %w", err)
	}
	return Diff(localDocs, remoteDocs)
}

// Diff computes the operation list between two flattened snapshots.
func Diff(localDocs, remoteDocs *DocumentMap) ([]Operation, error) {
	deletes := make([]Operation, 0)
	for _, id := range remoteDocs.order {
		if _, ok := localDocs.Get(id); ok {
			continue
		}
		kind, err := Classify(remoteDocs.docs[id])
		if err != nil {
			return nil, err
		}
		deletes = append(deletes, Delete(kind, id))
	}

	writes := make([]Operation, 0)
	for _, id := range localDocs.order {
		doc := localDocs.docs[id]
		if remoteDoc, ok := remoteDocs.Get(id); ok && Equal(doc, remoteDoc) {
			continue
		}
		kind, err := Classify(doc)
		if err != nil {
			return nil, err
		}
		writes = append(writes, Write(kind, id, doc))
	}

	return append(deletes, writes...), nil
}
