// Package amo 实现至多一次（at-most-once）投递
//
// 发送方为每条输入分配递增序列号并只发送一次，不缓存、不重传、不处理 ACK。
//
// 接收方尽力按序投递：
//   - seq 小于期望值：丢弃
//   - seq 等于期望值：投递并冲刷后续连续的缓冲条目
//   - seq 大于期望值：缓冲（已存在则忽略）
//
// 缓冲超过 MaxBuffer（默认 12）后放弃缺口，跳到最小的已缓冲序列号继续投递。
// 被跳过的消息永久丢失，但投递的消息始终唯一且递增。
package amo
