// Package portal は学校ポータルのクライアント機能を提供する。
//
// 認証、セッションの利用、代替計画（vplan）の取得といった上流との
// やり取りはすべてClientインターフェースを介して行う。Clientは
// Factoryの二つのコンストラクタ（資格情報から／既存セッションから）の
// どちらかで生成し、リクエストごとに新しいインスタンスを使う。
package portal
